package webui

// indexHTML is the single-page dashboard. It talks to the JSON API
// with fetch and needs no build step.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Futures Order Bot</title>
<style>
  body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2rem; background: #f6f7f9; color: #1e2430; }
  h1 { font-size: 1.4rem; }
  .grid { display: grid; grid-template-columns: 360px 1fr; gap: 1.5rem; align-items: start; }
  .card { background: #fff; border: 1px solid #dde1e7; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.25rem; }
  label { display: block; margin-top: .6rem; font-size: .85rem; color: #555; }
  input, select { width: 100%; padding: .4rem; margin-top: .2rem; border: 1px solid #ccd; border-radius: 4px; box-sizing: border-box; }
  button { margin-top: 1rem; padding: .5rem 1.2rem; border: 0; border-radius: 4px; background: #2563eb; color: #fff; cursor: pointer; }
  button:hover { background: #1d4ed8; }
  table { border-collapse: collapse; width: 100%; font-size: .85rem; }
  th, td { border-bottom: 1px solid #e5e7eb; padding: .35rem .5rem; text-align: left; }
  #result { margin-top: 1rem; white-space: pre-wrap; font-family: monospace; font-size: .8rem; }
  .err { color: #b91c1c; }
  .ok { color: #15803d; }
</style>
</head>
<body>
<h1>Futures Order Bot</h1>
<div class="grid">
  <div>
    <div class="card">
      <h2>Place Order</h2>
      <form id="orderForm">
        <label>Type
          <select name="type">
            <option>MARKET</option>
            <option>LIMIT</option>
            <option>STOP</option>
            <option>TAKE_PROFIT</option>
            <option>OCO</option>
          </select>
        </label>
        <label>Symbol <input name="symbol" placeholder="BTCUSDT" required></label>
        <label>Side
          <select name="side"><option>BUY</option><option>SELL</option></select>
        </label>
        <label>Quantity <input name="quantity" type="number" step="any" required></label>
        <label>Price <input name="price" type="number" step="any"></label>
        <label>Stop / Trigger Price <input name="stopPrice" type="number" step="any"></label>
        <label>Take Profit Price (OCO) <input name="tpPrice" type="number" step="any"></label>
        <label>Stop Loss Price (OCO) <input name="slPrice" type="number" step="any"></label>
        <label>Time In Force
          <select name="timeInForce">
            <option value="">default (GTC)</option>
            <option>GTC</option><option>IOC</option><option>FOK</option><option>GTX</option>
          </select>
        </label>
        <button type="submit">Submit</button>
      </form>
      <div id="result"></div>
    </div>
    <div class="card">
      <h2>Account</h2>
      <div id="account">loading…</div>
    </div>
  </div>
  <div>
    <div class="card">
      <h2>Positions</h2>
      <div id="positions">loading…</div>
    </div>
    <div class="card">
      <h2>Open Orders</h2>
      <div id="orders">loading…</div>
    </div>
    <div class="card">
      <h2>Recent Activity</h2>
      <div id="logs">loading…</div>
    </div>
  </div>
</div>
<script>
async function getJSON(url) {
  const resp = await fetch(url);
  const body = await resp.json();
  if (!resp.ok) throw new Error(body.error || resp.statusText);
  return body;
}

function renderTable(el, rows, cols) {
  if (!rows || rows.length === 0) { el.textContent = 'none'; return; }
  let html = '<table><tr>' + cols.map(c => '<th>' + c + '</th>').join('') + '</tr>';
  for (const r of rows) {
    html += '<tr>' + cols.map(c => '<td>' + (r[c] ?? '') + '</td>').join('') + '</tr>';
  }
  el.innerHTML = html + '</table>';
}

async function refresh() {
  try {
    const acct = await getJSON('/api/account');
    document.getElementById('account').innerHTML =
      'Wallet: ' + acct.totalWalletBalance + '<br>Available: ' + acct.availableBalance +
      '<br>Unrealized PnL: ' + acct.totalUnrealizedProfit;
  } catch (e) { document.getElementById('account').textContent = e.message; }
  try {
    const pos = await getJSON('/api/positions');
    renderTable(document.getElementById('positions'), pos.positions,
      ['symbol', 'positionAmt', 'entryPrice', 'markPrice', 'unrealizedProfit', 'leverage']);
  } catch (e) { document.getElementById('positions').textContent = e.message; }
  try {
    const ords = await getJSON('/api/orders');
    renderTable(document.getElementById('orders'), ords.orders,
      ['orderId', 'symbol', 'side', 'type', 'origQty', 'price', 'stopPrice', 'status']);
  } catch (e) { document.getElementById('orders').textContent = e.message; }
  try {
    const logs = await getJSON('/api/logs');
    renderTable(document.getElementById('logs'), logs.logs, ['time', 'action', 'detail']);
  } catch (e) { document.getElementById('logs').textContent = e.message; }
}

document.getElementById('orderForm').addEventListener('submit', async (ev) => {
  ev.preventDefault();
  const data = Object.fromEntries(new FormData(ev.target).entries());
  for (const k of ['quantity', 'price', 'stopPrice', 'tpPrice', 'slPrice']) {
    data[k] = data[k] ? parseFloat(data[k]) : 0;
  }
  const out = document.getElementById('result');
  try {
    const resp = await fetch('/api/order', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(data),
    });
    const body = await resp.json();
    if (!resp.ok) throw new Error(body.error || resp.statusText);
    out.className = 'ok';
    out.textContent = JSON.stringify(body, null, 2);
    refresh();
  } catch (e) {
    out.className = 'err';
    out.textContent = e.message;
  }
});

refresh();
setInterval(refresh, 10000);
</script>
</body>
</html>
`
